package config

// AppConfig is the top-level YAML structure.
type AppConfig struct {
	Version string      `yaml:"version"`
	Dataset DatasetConf `yaml:"dataset"`
	Engine  EngineConf  `yaml:"engine"`
	Logging LoggingConf `yaml:"logging"`
}

// DatasetConf points at the snapshot files the graph is built from.
type DatasetConf struct {
	Movies string `yaml:"movies"`
	Actors string `yaml:"actors"`
}

// EngineConf holds tunable query execution settings.
type EngineConf struct {
	QueryWorkers   int `yaml:"query_workers"`
	QueueDepth     int `yaml:"queue_depth"`
	QueryTimeoutMs int `yaml:"query_timeout_ms"`
	CacheSize      int `yaml:"cache_size"`
}

// LoggingConf controls structured logging.
type LoggingConf struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text|json
}
