package templates

import (
	"embed"
	"html/template"
	"io/fs"
	"os"
	"sort"
	"strings"

	"git.handmade.network/hmn/marsport/src/config"
	"git.handmade.network/hmn/marsport/src/logging"
	"git.handmade.network/hmn/marsport/src/marsurl"
	"git.handmade.network/hmn/marsport/src/oops"
	"git.handmade.network/hmn/marsport/src/utils"
	"github.com/Masterminds/sprig"
)

//go:embed src
var embeddedTemplateFs embed.FS
var embeddedTemplates map[string]*template.Template

func getTemplatesFromFS(templateFS fs.ReadDirFS) (map[string]*template.Template, map[string]error) {
	templates := make(map[string]*template.Template)
	errs := make(map[string]error)

	files := utils.Must1(templateFS.ReadDir("src"))
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".html") {
			continue
		}

		t := template.New(f.Name())
		t = t.Funcs(sprig.FuncMap())
		t = t.Funcs(MarsportTemplateFuncs)
		t, err := t.ParseFS(templateFS,
			"src/layouts/*",
			"src/"+f.Name(),
		)
		if err != nil {
			errs[f.Name()] = err
			continue
		}

		templates[f.Name()] = t
	}

	return templates, errs
}

func Init() {
	var errs map[string]error
	type errEntry struct {
		name string
		err  error
	}

	embeddedTemplates, errs = getTemplatesFromFS(embeddedTemplateFs)
	if len(errs) > 0 {
		var errsList []errEntry
		for filename, err := range errs {
			errsList = append(errsList, errEntry{filename, err})
		}
		sort.Slice(errsList, func(i, j int) bool {
			return strings.Compare(errsList[i].name, errsList[j].name) < 0
		})
		for _, err := range errsList {
			logging.Error().Str("filename", err.name).Err(err.err).Msg("Failed to parse template")
		}
		panic("Failed to parse templates; see above")
	}
}

// GetTemplate panics if the template does not exist or, with live templates
// on, fails to parse.
func GetTemplate(name string) *template.Template {
	var templates map[string]*template.Template
	if config.Config.Dev.LiveTemplates {
		var errs map[string]error
		templates, errs = getTemplatesFromFS(os.DirFS("src/templates").(fs.ReadDirFS))
		if errs[name] != nil {
			panic(oops.New(errs[name], "Error in template %s", name))
		}
	} else {
		if embeddedTemplates == nil {
			Init()
		}
		templates = embeddedTemplates
	}

	template, hasTemplate := templates[name]
	if !hasTemplate {
		panic(oops.New(nil, "Template not found: %s", name))
	}
	return template
}

var MarsportTemplateFuncs = template.FuncMap{
	"static": func(filepath string) string {
		return marsurl.BuildStatic(filepath)
	},
	"clientmodule": func() string {
		return marsurl.BuildClientModule()
	},
	"loginurl": func() string {
		return marsurl.BuildLogin()
	},
}
