package config

// Environment variable names recognized by Resolve.
const (
	EnvStorageURL     = "FILEDGER_STORAGE_URL"
	EnvLedgerURL      = "FILEDGER_LEDGER_URL"
	EnvLedgerUser     = "FILEDGER_LEDGER_USER"
	EnvLedgerPassword = "FILEDGER_LEDGER_PASS"
)

// Resolve merges configuration from three sources with decreasing priority:
//  1. Explicit values supplied by the caller (highest priority)
//  2. Environment variables (FILEDGER_STORAGE_URL, FILEDGER_LEDGER_URL,
//     FILEDGER_LEDGER_USER, FILEDGER_LEDGER_PASS)
//  3. The base config, typically from LoadConfig or DefaultConfig
//
// Only connection settings are overridable through the environment;
// DataDir, DNSResolver, and LogLevel come from base or explicit only.
func Resolve(explicit *Config, env map[string]string, base Config) Config {
	result := base

	// Layer 2: environment variables override the base config.
	if env != nil {
		if v, ok := env[EnvStorageURL]; ok && v != "" {
			result.StorageURL = v
		}
		if v, ok := env[EnvLedgerURL]; ok && v != "" {
			result.LedgerURL = v
		}
		if v, ok := env[EnvLedgerUser]; ok && v != "" {
			result.LedgerUser = v
		}
		if v, ok := env[EnvLedgerPassword]; ok && v != "" {
			result.LedgerPassword = v
		}
	}

	// Layer 3: explicit values have highest priority.
	if explicit != nil {
		if explicit.DataDir != "" {
			result.DataDir = explicit.DataDir
		}
		if explicit.StorageURL != "" {
			result.StorageURL = explicit.StorageURL
		}
		if explicit.LedgerURL != "" {
			result.LedgerURL = explicit.LedgerURL
		}
		if explicit.LedgerUser != "" {
			result.LedgerUser = explicit.LedgerUser
		}
		if explicit.LedgerPassword != "" {
			result.LedgerPassword = explicit.LedgerPassword
		}
		if explicit.DNSResolver != "" {
			result.DNSResolver = explicit.DNSResolver
		}
		if explicit.LogLevel != "" {
			result.LogLevel = explicit.LogLevel
		}
	}

	return result
}
