// Package archive copies save files to an S3 compatible bucket and back.
//
// A save file is archived whenever the session rotates to a new file, and on
// a schedule when the server runs. Archived copies survive the local retention
// pruning, so an older stocktake state can still be fetched and loaded.
package archive
