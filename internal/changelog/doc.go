// Package changelog classifies commits by their embedded changelog
// metadata and assembles the accepted entries into a markdown changelog.
//
// This package implements:
//   - Extraction of the "changelog:" block from commit messages
//   - YAML metadata parsing (section, title, description, project, skip)
//   - Project resolution from changed file paths
//   - Commit classification into skipped, rejected and accepted
//   - Markdown assembly ordered by the configured section tree
//
// Classification is a two-stage process. The block extractor only locates
// the metadata and computes the fallback title and description from the
// message text; the YAML stage then interprets the metadata itself. Errors
// from both stages surface as rejections with the offending commit id, so
// a check run can report every bad commit at once.
package changelog
