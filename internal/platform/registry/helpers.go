// internal/platform/registry/helpers.go
package registry

// Helpers type-safe para leer la configuración Custom de un resolver
// sin chequeos manuales de nil ni type assertions repetidas.

// GetStringConfig retorna custom[key] como string o el default.
func GetStringConfig(custom map[string]interface{}, key, def string) string {
	if custom == nil {
		return def
	}
	if v, ok := custom[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// GetIntConfig retorna custom[key] como int o el default.
func GetIntConfig(custom map[string]interface{}, key string, def int) int {
	if custom == nil {
		return def
	}
	if v, ok := custom[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return def
}

// GetBoolConfig retorna custom[key] como bool o el default.
func GetBoolConfig(custom map[string]interface{}, key string, def bool) bool {
	if custom == nil {
		return def
	}
	if v, ok := custom[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}
