package models

// TableDocument is a titled document made of tables
type TableDocument struct {
	Title    string
	Sections []TableSection
}

// TableSection is one table, optionally under its own heading
type TableSection struct {
	Title   string
	Columns []string
	Rows    [][]string
}
