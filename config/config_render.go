package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/0xPolygon/rollupchain/log"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/valyala/fasttemplate"
)

const (
	startTag = "{{"
	endTag   = "}}"
	// typeMark tags a var that was written without quotes, so its value keeps its TOML type
	typeMark = ":raw"
)

var (
	ErrCycleVars                 = errors.New("cycle vars")
	ErrMissingVars               = errors.New("missing vars")
	ErrUnsupportedConfigFileType = errors.New("unsupported config file type")

	unquotedVarRe = regexp.MustCompile(`=\s*\{\{([^}:]+)\}\}`)
	quotedVarRe   = regexp.MustCompile(`=\s*"\{\{([^}:]+)` + typeMark + `\}\}"`)
	typeMarkRe    = regexp.MustCompile(`\{\{([^}:]+)` + typeMark + `\}\}`)
)

// FileData is one source of config. Sources are merged in order, the later ones override.
type FileData struct {
	Name    string
	Content string
}

// Renderer merges config sources and resolves the {{Var}} indirections among their values.
// A var is looked up first in the environment as <EnvPrefix>_<Var> (dots replaced by
// underscores) and then among the merged values. Vars can point to other vars.
type Renderer struct {
	Files     []FileData
	LookupEnv func(key string) (string, bool)
	EnvPrefix string
}

func NewRenderer(files []FileData, envPrefix string) *Renderer {
	return &Renderer{
		Files:     files,
		LookupEnv: os.LookupEnv,
		EnvPrefix: envPrefix,
	}
}

// Render merges all the sources and resolves every var
func (r *Renderer) Render() (string, error) {
	merged, err := r.Merge()
	if err != nil {
		return "", fmt.Errorf("fail to merge files: %w", err)
	}
	return r.ResolveVars(merged)
}

// Merge returns the TOML resulting of loading every source in order, without resolving vars
func (r *Renderer) Merge() (string, error) {
	k := koanf.New(".")
	for _, f := range r.Files {
		if err := k.Load(rawbytes.Provider([]byte(quoteVars(f.Content))), toml.Parser()); err != nil {
			log.Errorf("error loading config file %s: %v", f.Name, err)
			return "", fmt.Errorf("fail to load %s as toml: %w", f.Name, err)
		}
	}
	marshaled, err := k.Marshal(toml.Parser())
	if err != nil {
		return "", fmt.Errorf("fail to marshal to toml: %w", err)
	}
	return unquoteVars(string(marshaled)), nil
}

// ResolveVars replaces the vars of data until none is left. Each pass must resolve
// at least one var, otherwise the remaining ones are either missing or a cycle.
// On error the partially resolved data is returned.
func (r *Renderer) ResolveVars(data string) (string, error) {
	pending := r.vars(data)
	for len(pending) > 0 {
		values, err := definedValues(data)
		if err != nil {
			return data, err
		}
		tpl, err := fasttemplate.NewTemplate(data, startTag, endTag)
		if err != nil {
			return data, fmt.Errorf("fail to parse template: %w", err)
		}
		next := tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
			if v, ok := r.lookup(tag, values); ok {
				return w.Write([]byte(v))
			}
			return w.Write([]byte(startTag + tag + endTag))
		})
		next = typeMarkRe.ReplaceAllString(unquoteVars(next), startTag+"${1}"+endTag)

		stillPending := r.vars(next)
		if len(stillPending) >= len(pending) {
			var missing []string
			for _, tag := range stillPending {
				if _, ok := r.lookup(tag, values); !ok && !contains(missing, tag) {
					missing = append(missing, tag)
				}
			}
			if len(missing) > 0 {
				return next, fmt.Errorf("%v: %w", missing, ErrMissingVars)
			}
			return next, fmt.Errorf("%v: %w", stillPending, ErrCycleVars)
		}
		data = next
		pending = stillPending
	}
	return data, nil
}

func (r *Renderer) lookup(tag string, values map[string]interface{}) (string, bool) {
	envKey := r.EnvPrefix + "_" + strings.ReplaceAll(tag, ".", "_")
	if v, ok := r.LookupEnv(envKey); ok {
		return v, true
	}
	if v, ok := values[tag]; ok {
		return fmt.Sprintf("%v", v), true
	}
	return "", false
}

// vars returns every var occurrence of data
func (r *Renderer) vars(data string) []string {
	tpl, err := fasttemplate.NewTemplate(data, startTag, endTag)
	if err != nil {
		return nil
	}
	var found []string
	tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		found = append(found, tag)
		return 0, nil
	})
	return found
}

func definedValues(data string) (map[string]interface{}, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider([]byte(quoteVars(data))), toml.Parser()); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return k.All(), nil
}

// quoteVars turns A = {{B}}, which is not valid TOML, into A = "{{B:raw}}"
func quoteVars(data string) string {
	return unquotedVarRe.ReplaceAllString(data, `= "{{${1}`+typeMark+`}}"`)
}

// unquoteVars reverts quoteVars
func unquoteVars(data string) string {
	return quotedVarRe.ReplaceAllString(data, "= {{${1}}}")
}

func contains(values []string, search string) bool {
	for _, v := range values {
		if v == search {
			return true
		}
	}
	return false
}

func convertFileToToml(fileData string, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "json":
		k := koanf.New(".")
		if err := k.Load(rawbytes.Provider([]byte(fileData)), json.Parser()); err != nil {
			return fileData, fmt.Errorf("error loading json file: %w", err)
		}
		tomlData, err := toml.Parser().Marshal(k.Raw())
		if err != nil {
			return fileData, fmt.Errorf("error converting json to toml: %w", err)
		}
		return string(tomlData), nil
	case "yml", "yaml", "ini":
		return fileData, fmt.Errorf("can't convert from %s to TOML: %w", fileType, ErrUnsupportedConfigFileType)
	default:
		log.Warnf("filetype %s unknown, assuming it's a TOML file", fileType)
		return fileData, nil
	}
}
