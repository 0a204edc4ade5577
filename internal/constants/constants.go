package constants

const (
	Version        = `0.0.1`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.stocktrack/`

	// DataFile is the default name of the inventory table, relative to the
	// working directory unless overridden in the config.
	DataFile = `warehouse_inventory.csv`

	// TimestampLayout is the on-disk format of the Updated On column.
	TimestampLayout = `2006-01-02 15:04:05`

	// DisplayTimeLayout is how timestamps are shown in the TUI and previews.
	DisplayTimeLayout = `02/01/2006 15:04`
)
