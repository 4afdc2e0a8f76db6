package httpapi

import (
	"embed"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html
var viewsFS embed.FS

// NewEngine builds the HTML template engine with the formatting helpers the
// pages use. Times arrive already zoned, so formatting never shifts them.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("clock", func(t time.Time) string {
		return t.Format("3:04 PM MST")
	})
	engine.AddFunc("longdate", func(t time.Time) string {
		return t.Format("Monday, January 2, 2006")
	})
	engine.AddFunc("day", func(t time.Time) string {
		return t.Format("Mon, Jan 2")
	})
	engine.AddFunc("temp", func(v float64) string {
		return strconv.FormatFloat(v, 'f', 1, 64)
	})
	return engine
}
