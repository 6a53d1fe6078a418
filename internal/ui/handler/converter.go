package handler

import (
	"net/http"

	"github.com/mahesh00009/CurToCryptoFrontend/pkg/currencies"
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"

	"github.com/gin-gonic/gin"
)

type ConverterHandler struct {
	renderer    *Renderer
	catalog     currencies.Catalog
	sessionPath string
}

func NewConverterHandler(renderer *Renderer, catalog currencies.Catalog, sessionPath string) *ConverterHandler {
	return &ConverterHandler{
		renderer:    renderer,
		catalog:     catalog,
		sessionPath: sessionPath,
	}
}

type ConverterPageData struct {
	Title          string
	PageTitle      string
	Currencies     []string
	DefaultSymbol  string
	DefaultConvert string
	SessionPath    string
}

func (h *ConverterHandler) Index(c *gin.Context) {
	data := ConverterPageData{
		Title:          "Crypto Converter",
		PageTitle:      "Convert Crypto",
		Currencies:     h.catalog.All(),
		DefaultSymbol:  convert.DefaultSymbol,
		DefaultConvert: convert.DefaultConvert,
		SessionPath:    h.sessionPath,
	}
	h.renderer.HTML(c, http.StatusOK, "converter", data)
}
