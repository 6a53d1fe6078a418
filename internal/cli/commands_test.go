package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptosCommand_Table(t *testing.T) {
	r := newRemote(t)
	stdout, _, err := executeCommand(t, "", "--base-url", r.server.URL, "cryptos")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"SYMBOL", "NAME", "ID"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"BTC", "Bitcoin", "1"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"ETH", "Ethereum", "1027"}, strings.Fields(lines[2]))
}

func TestCryptosCommand_JSON(t *testing.T) {
	r := newRemote(t)
	stdout, _, err := executeCommand(t, "", "--base-url", r.server.URL, "cryptos", "--json")
	require.NoError(t, err)

	var list []convert.Currency
	require.NoError(t, json.Unmarshal([]byte(stdout), &list))
	require.Len(t, list, 2)
	assert.Equal(t, convert.ID("1027"), list[1].ID)
}

func TestCryptosCommand_RemoteDown(t *testing.T) {
	r := newRemote(t)
	url := r.server.URL
	r.server.Close()

	_, _, err := executeCommand(t, "", "--base-url", url, "cryptos")
	assert.Error(t, err)
}

func TestConvertCommand(t *testing.T) {
	r := newRemote(t)
	stdout, _, err := executeCommand(t, "", "--base-url", r.server.URL, "convert", "btc", "2", "eur")
	require.NoError(t, err)

	assert.Equal(t, "2 BTC = 130000 EUR\n", stdout)
	assert.Equal(t, int32(1), r.conversions.Load())
}

func TestConvertCommand_LogsStayOffStdout(t *testing.T) {
	r := newRemote(t)
	stdout, stderr, err := executeCommand(t, "", "--base-url", r.server.URL, "--log-level", "info", "convert", "BTC", "2", "EUR")
	require.NoError(t, err)

	assert.Equal(t, "2 BTC = 130000 EUR\n", stdout)
	assert.Contains(t, stderr, "database connected")
}

func TestConvertCommand_DefaultTarget(t *testing.T) {
	r := newRemote(t)
	stdout, _, err := executeCommand(t, "", "--base-url", r.server.URL, "convert", "ETH", "1")
	require.NoError(t, err)

	assert.Equal(t, "1 ETH = 65000 USD\n", stdout)
}

func TestConvertCommand_InvalidAmount(t *testing.T) {
	r := newRemote(t)
	for _, amount := range []string{"0", "-1", "abc"} {
		_, _, err := executeCommand(t, "", "--base-url", r.server.URL, "convert", "BTC", amount)

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr, amount)
		assert.Equal(t, 2, exitErr.Code)
		assert.ErrorIs(t, err, convert.ErrInvalidAmount)
	}
	assert.Equal(t, int32(0), r.conversions.Load())
}

func TestConvertCommand_Args(t *testing.T) {
	_, _, err := executeCommand(t, "", "convert", "BTC")
	assert.Error(t, err)
}

func TestWatchCommand(t *testing.T) {
	r := newRemote(t)
	stdin := "amount 1\n"
	stdout, _, err := executeCommand(t, stdin, "--base-url", r.server.URL, "watch", "--debounce", "5ms")
	require.NoError(t, err)

	assert.Equal(t, "65000 BTC\n", stdout)
	assert.Equal(t, int32(1), r.conversions.Load())
}

func TestWatchCommand_Burst(t *testing.T) {
	r := newRemote(t)
	stdin := "1\n12\n123\nsymbol eth\n2\nquit\namount 9\n"
	stdout, _, err := executeCommand(t, stdin, "--base-url", r.server.URL, "watch", "--debounce", "50ms")
	require.NoError(t, err)

	assert.Equal(t, "130000 ETH\n", stdout)
	assert.Equal(t, int32(1), r.conversions.Load())
}

type recordingSetter struct {
	edits []string
}

func (r *recordingSetter) SetAmount(v string)  { r.edits = append(r.edits, "amount="+v) }
func (r *recordingSetter) SetSymbol(v string)  { r.edits = append(r.edits, "symbol="+v) }
func (r *recordingSetter) SetConvert(v string) { r.edits = append(r.edits, "convert="+v) }

func TestReadEdits(t *testing.T) {
	in := strings.NewReader("amount 1.5\n\n  symbol eth \nconvert npr\n42\nprice 7\namount\nexit\namount 3\n")
	var errOut strings.Builder
	setter := &recordingSetter{}

	require.NoError(t, readEdits(in, &errOut, setter))

	assert.Equal(t, []string{
		"amount=1.5",
		"symbol=ETH",
		"convert=NPR",
		"amount=42",
		"amount=",
	}, setter.edits)
	assert.Contains(t, errOut.String(), `unknown field "price"`)
}
