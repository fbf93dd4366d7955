package shipcard

import (
	"errors"

	"github.com/alnah/go-shipcard/internal/assets"
)

// Built-in asset names.
const (
	DefaultStyle    = assets.DefaultStyleName
	DefaultTemplate = assets.DefaultTemplateName
)

// AssetLoader loads the stylesheet and html/template source of the card page.
// Implement it to serve assets from another backend.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a page template by name (without .html).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader. With an empty basePath only the
// built-in assets are used; otherwise files under basePath take precedence:
//   - styles/{name}.css
//   - templates/{name}.html
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter maps internal asset errors to the public sentinels.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	return content, convertAssetError(err)
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	return content, convertAssetError(err)
}

func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		// An unusable name can never exist, so it reads as not found.
		return wrapError(ErrStyleNotFound, err)
	default:
		return err
	}
}

// wrapError keeps the internal message while matching the public sentinel.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
