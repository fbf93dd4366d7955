// Package assets provides the stylesheet and HTML template of the card page.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in card.css and card.html (go:embed)
//	    ├── FilesystemLoader  - overrides from a directory on disk
//	    └── AssetResolver     - custom first, embedded on "not found"
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// # Security
//
// Asset names are validated before any path is built. FilesystemLoader
// resolves symlinks and verifies the final path stays within basePath.
package assets
