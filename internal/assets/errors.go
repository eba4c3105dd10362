package assets

import "errors"

var (
	// ErrStyleNotFound means no stylesheet exists under the requested theme name.
	ErrStyleNotFound = errors.New("style not found")

	// ErrTemplateNotFound means no card template exists under the requested name.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName means the name carries path separators, dots, or
	// other characters unsafe to splice into a file path.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath means the custom asset directory is missing or unreadable.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead wraps I/O failures while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal means a resolved asset path escaped the base directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
