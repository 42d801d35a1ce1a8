package importer

import (
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasYAML []byte

type aliasTable struct {
	Sheets  map[string]string `yaml:"sheets"`
	Headers map[string]string `yaml:"headers"`
}

var aliases = loadAliases()

func loadAliases() aliasTable {
	var t aliasTable
	if err := yaml.Unmarshal(aliasYAML, &t); err != nil {
		panic(errors.Wrap(err, "importer: parse aliases.yaml"))
	}
	return t
}

// CanonicalHeader lower-cases a column header and folds locale aliases onto
// the canonical English column names. Headers that are dates (the staffing
// grid) pass through untouched apart from case.
func CanonicalHeader(header string) string {
	key := strings.ToLower(strings.TrimSpace(header))
	if canonical, ok := aliases.Headers[key]; ok {
		return canonical
	}
	return key
}

// CanonicalSheet folds a worksheet name onto the logical sheet names the
// importers dispatch on.
func CanonicalSheet(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases.Sheets[key]; ok {
		return canonical
	}
	return key
}
