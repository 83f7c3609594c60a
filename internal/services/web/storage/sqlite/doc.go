// Package sqlite implements the web session store on SQLite.
package sqlite
