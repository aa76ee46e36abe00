package rules

import (
	"embed"
	"fmt"
	"sync"

	"github.com/alexaandru/go-sitter-forest/zeek"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

//go:embed queries/*.scm
var queryFS embed.FS

// zeekIndentUnit is one tab per level, matching upstream Zeek style.
const zeekIndentUnit = "\t"

var (
	zeekOnce sync.Once
	zeekLang *Language
	zeekErr  error
)

// Zeek returns the compiled rule set for Zeek scripts. The rule set is
// built once and shared; the returned Language is immutable and safe for
// concurrent use.
func Zeek() (*Language, error) {
	zeekOnce.Do(func() {
		querySource, err := queryFS.ReadFile("queries/zeek.scm")
		if err != nil {
			zeekErr = fmt.Errorf("rules: reading zeek query: %w", err)

			return
		}

		grammar := sitter.NewLanguage(zeek.GetLanguage())

		zeekLang, zeekErr = New(
			"zeek",
			grammar,
			string(querySource),
			WithIndentUnit(zeekIndentUnit),
			WithExtensions(".zeek"),
		)
	})

	return zeekLang, zeekErr
}
