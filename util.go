package heredity

import "strings"

// WhichSQLiteDriver names the sqlite driver this build links: mattn/go-sqlite3
// with cgo, modernc.org/sqlite without.
func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}

// URI filenames have to begin with 'file:'; see
// https://www.sqlite.org/c3ref/open.html . It seems that sqlite3 permitted
// URI filenames without the file: prefix, but that is not standard.
func sqliteURI(path string) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path
}
