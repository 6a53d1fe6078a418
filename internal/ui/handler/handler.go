package handler

import (
	"errors"
	"io/fs"

	"github.com/mahesh00009/CurToCryptoFrontend/pkg/currencies"

	"github.com/gin-gonic/gin"
)

const DefaultSessionPath = "/api/converter/ws"

var ErrNilEngine = errors.New("engine is required")

type WebHandler struct {
	engine      *gin.Engine
	catalog     currencies.Catalog
	templates   fs.FS
	sessionPath string
	renderer    *Renderer
}

type Option func(*WebHandler)

func WithEngine(engine *gin.Engine) Option {
	return func(h *WebHandler) {
		h.engine = engine
	}
}

func WithCatalog(cat currencies.Catalog) Option {
	return func(h *WebHandler) {
		h.catalog = cat
	}
}

// WithTemplates overrides the embedded templates, e.g. with os.DirFS while
// editing pages.
func WithTemplates(files fs.FS) Option {
	return func(h *WebHandler) {
		h.templates = files
	}
}

func WithSessionPath(p string) Option {
	return func(h *WebHandler) {
		h.sessionPath = p
	}
}

func New(opts ...Option) (*WebHandler, error) {
	h := &WebHandler{
		catalog:     currencies.Builtin(),
		sessionPath: DefaultSessionPath,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.engine == nil {
		return nil, ErrNilEngine
	}
	h.renderer = NewRenderer(h.templates)
	return h, nil
}

func (h *WebHandler) Setup() error {
	conv := NewConverterHandler(h.renderer, h.catalog, h.sessionPath)

	h.engine.GET("/", conv.Index)

	return nil
}
