package assets

// Built-in asset names.
const (
	DefaultStyleName    = "card"
	DefaultTemplateName = "card"
)

// AssetLoader loads page stylesheets and templates by name.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css).
	// Returns ErrStyleNotFound or ErrInvalidAssetName.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an html/template source by name (without .html).
	// Returns ErrTemplateNotFound or ErrInvalidAssetName.
	LoadTemplate(name string) (string, error)
}

// assetKind describes where one category of asset lives and how its
// absence is reported.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = assetKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

func (k assetKind) file(name string) string {
	return k.dir + "/" + name + k.ext
}
