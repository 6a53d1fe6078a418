package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// remote fakes the conversion service: every crypto is worth 65000 units.
type remote struct {
	server      *httptest.Server
	conversions atomic.Int32
}

func newRemote(t *testing.T) *remote {
	t.Helper()
	r := &remote{}
	mux := http.NewServeMux()
	mux.HandleFunc("/topCryptos", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":[{"id":1,"name":"Bitcoin","symbol":"BTC"},{"id":1027,"name":"Ethereum","symbol":"ETH"}]}`)
	})
	mux.HandleFunc("/convertCurrency", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		r.conversions.Add(1)
		var body convert.Request
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		amount, err := decimal.NewFromString(body.Amount)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"convertedAmount": amount.Mul(decimal.NewFromInt(65000)).InexactFloat64(),
		})
	})
	r.server = httptest.NewServer(mux)
	t.Cleanup(r.server.Close)
	return r
}

// executeCommand runs the CLI with the given stdin and args and captures
// stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewRootCommand()
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err = cmd.Execute()

	return outBuf.String(), errBuf.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "--help")
	require.NoError(t, err)

	for _, sub := range []string{"serve", "cryptos", "convert", "watch"} {
		assert.Contains(t, stdout, sub, "help should mention %q subcommand", sub)
	}
	for _, flag := range []string{"--base-url", "--env-file", "--log-level"} {
		assert.Contains(t, stdout, flag, "help should mention %q flag", flag)
	}
}

func TestRootCommand_UnknownFlag(t *testing.T) {
	_, _, err := executeCommand(t, "", "--nonexistent")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	r := newRemote(t)
	_, _, err := executeCommand(t, "", "--base-url", r.server.URL, "--log-level", "chatty", "cryptos")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestExitError(t *testing.T) {
	assert.Equal(t, "exit code 3", (&ExitError{Code: 3}).Error())
	assert.ErrorIs(t, &ExitError{Code: 1, Err: io.ErrClosedPipe}, io.ErrClosedPipe)
}
