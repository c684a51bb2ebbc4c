package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     Server     `yaml:"server"`
	Database   Database   `yaml:"database"`
	Redis      Redis      `yaml:"redis"`
	Kafka      Kafka      `yaml:"kafka"`
	Auth       Auth       `yaml:"auth"`
	Log        Log        `yaml:"log"`
	Matching   Matching   `yaml:"matching"`
	Extraction Extraction `yaml:"extraction"`
	Reconcile  Reconcile  `yaml:"reconcile"`
}

// Server holds HTTP server settings.
type Server struct {
	Addr              string        `yaml:"addr"                env:"SERVER_ADDR"                env-default:":8080"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"SERVER_READ_HEADER_TIMEOUT" env-default:"5s"`
	ReadTimeout       time.Duration `yaml:"read_timeout"        env:"SERVER_READ_TIMEOUT"        env-default:"10s"`
	WriteTimeout      time.Duration `yaml:"write_timeout"       env:"SERVER_WRITE_TIMEOUT"       env-default:"30s"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"        env:"SERVER_IDLE_TIMEOUT"        env-default:"60s"`
	RequestTimeout    time.Duration `yaml:"request_timeout"     env:"SERVER_REQUEST_TIMEOUT"     env-default:"15s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"SERVER_SHUTDOWN_TIMEOUT"    env-default:"10s"`
}

// Database holds PostgreSQL settings. An empty DSN selects the in-memory
// stores.
type Database struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxOpenConns    int           `yaml:"max_open_conns"     env:"DATABASE_MAX_OPEN_CONNS"     env-default:"25"`
	MaxIdleConns    int           `yaml:"max_idle_conns"     env:"DATABASE_MAX_IDLE_CONNS"     env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"  env:"DATABASE_CONN_MAX_LIFETIME"  env-default:"1h"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"DATABASE_CONN_MAX_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// Redis enables the shared link lock when URL is set.
type Redis struct {
	URL          string        `yaml:"url"            env:"REDIS_URL"`
	PoolSize     int           `yaml:"pool_size"      env:"REDIS_POOL_SIZE"      env-default:"10"`
	MinIdleConns int           `yaml:"min_idle_conns" env:"REDIS_MIN_IDLE_CONNS" env-default:"2"`
	DialTimeout  time.Duration `yaml:"dial_timeout"   env:"REDIS_DIAL_TIMEOUT"   env-default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout"   env:"REDIS_READ_TIMEOUT"   env-default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout"  env:"REDIS_WRITE_TIMEOUT"  env-default:"3s"`
}

// Kafka enables the audit outbox relay when Brokers is set. The relay needs
// the PostgreSQL outbox.
type Kafka struct {
	Brokers           []string      `yaml:"brokers"            env:"KAFKA_BROKERS"            env-separator:","`
	ClientID          string        `yaml:"client_id"          env:"KAFKA_CLIENT_ID"          env-default:"ssto"`
	Topic             string        `yaml:"topic"              env:"KAFKA_TOPIC"              env-default:"ssto.signal-links"`
	Partitions        int32         `yaml:"partitions"         env:"KAFKA_PARTITIONS"         env-default:"3"`
	ReplicationFactor int16         `yaml:"replication_factor" env:"KAFKA_REPLICATION_FACTOR" env-default:"1"`
	DialTimeout       time.Duration `yaml:"dial_timeout"       env:"KAFKA_DIAL_TIMEOUT"       env-default:"10s"`
	RelayInterval     time.Duration `yaml:"relay_interval"     env:"KAFKA_RELAY_INTERVAL"     env-default:"1s"`
	RelayBatchSize    int           `yaml:"relay_batch_size"   env:"KAFKA_RELAY_BATCH_SIZE"   env-default:"100"`
}

// Auth configures operator bearer tokens (HS256).
type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"ssto"`
}

// Log holds logging settings.
type Log struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Matching holds the scoring policy.
type Matching struct {
	WindowHours         int     `yaml:"window_hours"          env:"MATCH_WINDOW_HOURS"          env-default:"48"`
	StrongNameThreshold float64 `yaml:"strong_name_threshold" env:"MATCH_STRONG_NAME_THRESHOLD" env-default:"0.90"`
	FuzzyNameThreshold  float64 `yaml:"fuzzy_name_threshold"  env:"MATCH_FUZZY_NAME_THRESHOLD"  env-default:"0.75"`
	SuggestionLimit     int     `yaml:"suggestion_limit"      env:"MATCH_SUGGESTION_LIMIT"      env-default:"5"`
}

// Extraction overrides the metadata alias lists. Empty lists keep the
// built-in defaults. ExtraTransliterations maps a single rune to its Latin
// replacement.
type Extraction struct {
	TerminalKeys          []string          `yaml:"terminal_keys"          env:"EXTRACT_TERMINAL_KEYS"          env-separator:","`
	MMSIKeys              []string          `yaml:"mmsi_keys"              env:"EXTRACT_MMSI_KEYS"              env-separator:","`
	IMOKeys               []string          `yaml:"imo_keys"               env:"EXTRACT_IMO_KEYS"               env-separator:","`
	VesselNameKeys        []string          `yaml:"vessel_name_keys"       env:"EXTRACT_VESSEL_NAME_KEYS"       env-separator:","`
	TextKeys              []string          `yaml:"text_keys"              env:"EXTRACT_TEXT_KEYS"              env-separator:","`
	TestMarkers           []string          `yaml:"test_markers"           env:"EXTRACT_TEST_MARKERS"           env-separator:","`
	ExtraTransliterations map[string]string `yaml:"extra_transliterations" env:"EXTRACT_EXTRA_TRANSLITERATIONS" env-separator:","`
}

// Reconcile bounds store calls, the shared lock and the unmatched feed.
type Reconcile struct {
	StoreTimeout     time.Duration `yaml:"store_timeout"      env:"RECONCILE_STORE_TIMEOUT"      env-default:"5s"`
	LockTTL          time.Duration `yaml:"lock_ttl"           env:"RECONCILE_LOCK_TTL"           env-default:"10s"`
	FeedDefaultLimit int           `yaml:"feed_default_limit" env:"RECONCILE_FEED_DEFAULT_LIMIT" env-default:"50"`
	FeedMaxLimit     int           `yaml:"feed_max_limit"     env:"RECONCILE_FEED_MAX_LIMIT"     env-default:"200"`
	FeedWorkers      int           `yaml:"feed_workers"       env:"RECONCILE_FEED_WORKERS"       env-default:"8"`
}
