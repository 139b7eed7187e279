package archive

// Config is the configuration of the archive
type Config struct {
	// DBPath is the path of the sqlite database
	DBPath string `mapstructure:"DBPath"`
	// ProofCacheSize is the number of element proofs kept in memory. 0 disables the cache
	ProofCacheSize int `mapstructure:"ProofCacheSize"`
}
