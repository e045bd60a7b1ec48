// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"ipsift/internal/core/domain"
	"ipsift/internal/core/ports"
)

type Config struct {
	Core   Core
	Feed   Feed
	Probe  Probe
	Output Output
	Quotas Quotas

	// Resolvers: mapa dinámico de configuraciones por estrategia
	// Key = resolver name (ej: "tag", "rangedb", "geodb", "remote")
	Resolvers map[string]ports.ResolverConfig

	PrintVersion bool
}

type Core struct {
	// Resolver es la estrategia de resolución de país seleccionada
	Resolver string

	// Workers es el límite de probes concurrentes
	Workers int

	// TimeoutS timeout global en segundos (0 = sin timeout)
	TimeoutS int

	// IncludeCN agrega "cn" al final del orden de prioridad
	IncludeCN bool
}

type Feed struct {
	// URL de la fuente remota de candidatos
	URL string

	// Path de archivo local; si se setea, tiene prioridad sobre URL
	Path string
}

type Probe struct {
	// PingTimeout presupuesto del check ICMP primario
	PingTimeout time.Duration

	// TCPTimeout presupuesto por puerto del fallback TCP
	TCPTimeout time.Duration

	// TCPPorts puertos del fallback, probados en secuencia
	TCPPorts []int

	// DisableICMP salta el check ICMP (entornos sin permisos de socket)
	DisableICMP bool
}

type Output struct {
	// Dir directorio de salida
	Dir string

	// File nombre del archivo plano de salida
	File string

	// JSONReport escribe además el reporte de la corrida en JSON
	JSONReport bool

	// TagLines agrega el sufijo " #CC" a cada línea del output
	TagLines bool

	// Quiet desactiva el resumen en terminal
	Quiet bool
}

type Quotas struct {
	// File archivo YAML opcional que sobreescribe la tabla de cupos
	File string

	// PerCountry tabla efectiva país -> cupo
	PerCountry map[string]int
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	quotas := make(map[string]int)
	for c, n := range domain.DefaultQuotas() {
		quotas[string(c)] = n
	}

	return Config{
		Core: Core{
			Resolver:  "tag",
			Workers:   8,
			TimeoutS:  0,
			IncludeCN: false,
		},
		Feed: Feed{
			URL:  "",
			Path: "",
		},
		Probe: Probe{
			PingTimeout: 2 * time.Second,
			TCPTimeout:  1 * time.Second,
			TCPPorts:    []int{80, 443},
			DisableICMP: false,
		},
		Output: Output{
			Dir:        "ipsift_out",
			File:       "ip.txt",
			JSONReport: true,
			TagLines:   false,
			Quiet:      false,
		},
		Quotas: Quotas{
			File:       "",
			PerCountry: quotas,
		},
		Resolvers: map[string]ports.ResolverConfig{
			"tag": {
				Enabled: true,
				Timeout: 5 * time.Second,
				Custom:  make(map[string]interface{}),
			},
			"rangedb": {
				Enabled: true,
				Timeout: 5 * time.Second,
				Custom: map[string]interface{}{
					"csv_path": "dbip-country-lite.csv",
				},
			},
			"geodb": {
				Enabled: true,
				Timeout: 5 * time.Second,
				Custom: map[string]interface{}{
					"db_path": "country.mmdb",
				},
			},
			"remote": {
				Enabled:   true,
				Timeout:   15 * time.Second,
				RateLimit: 1,
				CacheTTL:  1 * time.Hour,
				CacheSize: 4096,
				Custom: map[string]interface{}{
					"batch_url": "http://ip-api.com/batch",
				},
			},
		},
	}
}

// Load inicializa la configuración: defaults -> ENV -> flags (flags tienen
// prioridad), luego el archivo de cupos YAML si se indicó. Maneja help y
// version internamente.
func Load(version, commit, date string) (Config, error) {
	cfg := DefaultConfig()

	loadFromEnv(&cfg)

	if err := loadFromFlags(&cfg); err != nil {
		return cfg, err
	}

	if cfg.PrintVersion {
		fmt.Printf("ipsift %s (commit %s, built %s)\n", version, commit, date)
		os.Exit(0)
	}

	if cfg.Quotas.File != "" {
		if err := loadQuotaFile(&cfg); err != nil {
			return cfg, err
		}
	}

	if err := normalize(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	if v := getenv("IPSIFT_FEED_URL", ""); v != "" {
		cfg.Feed.URL = v
	}
	if v := getenv("IPSIFT_FEED_FILE", ""); v != "" {
		cfg.Feed.Path = v
	}
	if v := getenv("IPSIFT_RESOLVER", ""); v != "" {
		cfg.Core.Resolver = v
	}
	if v := getenv("IPSIFT_WORKERS", ""); v != "" {
		cfg.Core.Workers = parseInt(v, cfg.Core.Workers)
	}
	if v := getenv("IPSIFT_TIMEOUT", ""); v != "" {
		cfg.Core.TimeoutS = parseInt(v, cfg.Core.TimeoutS)
	}
	if v := getenv("IPSIFT_INCLUDE_CN", ""); v != "" {
		cfg.Core.IncludeCN = parseBool(v)
	}
	if v := getenv("IPSIFT_OUTPUT_DIR", ""); v != "" {
		cfg.Output.Dir = v
	}
	if v := getenv("IPSIFT_OUTPUT_FILE", ""); v != "" {
		cfg.Output.File = v
	}
	if v := getenv("IPSIFT_QUOTA_FILE", ""); v != "" {
		cfg.Quotas.File = v
	}

	// Resolver config desde ENV
	// Formato: IPSIFT_RESOLVER_RANGEDB_CSV_PATH=...
	//          IPSIFT_RESOLVER_REMOTE_RATELIMIT=2
	for name := range cfg.Resolvers {
		prefix := fmt.Sprintf("IPSIFT_RESOLVER_%s_", strings.ToUpper(name))

		rcfg := cfg.Resolvers[name]

		if v := getenv(prefix+"ENABLED", ""); v != "" {
			rcfg.Enabled = parseBool(v)
		}
		if v := getenv(prefix+"TIMEOUT", ""); v != "" {
			rcfg.Timeout = time.Duration(parseInt(v, int(rcfg.Timeout.Seconds()))) * time.Second
		}
		if v := getenv(prefix+"RATELIMIT", ""); v != "" {
			rcfg.RateLimit = parseInt(v, rcfg.RateLimit)
		}
		if v := getenv(prefix+"CSV_PATH", ""); v != "" {
			rcfg.Custom["csv_path"] = v
		}
		if v := getenv(prefix+"DB_PATH", ""); v != "" {
			rcfg.Custom["db_path"] = v
		}
		if v := getenv(prefix+"BATCH_URL", ""); v != "" {
			rcfg.Custom["batch_url"] = v
		}

		cfg.Resolvers[name] = rcfg
	}
}

// loadFromFlags parsea flags de CLI con pflag.
func loadFromFlags(cfg *Config) error {
	fs := pflag.CommandLine

	fs.StringVarP(&cfg.Feed.URL, "url", "u", cfg.Feed.URL, "URL de la fuente de candidatos")
	fs.StringVarP(&cfg.Feed.Path, "file", "f", cfg.Feed.Path, "Archivo local de candidatos (prioridad sobre --url)")
	fs.StringVarP(&cfg.Core.Resolver, "resolver", "r", cfg.Core.Resolver, "Estrategia de resolución (tag|rangedb|geodb|remote)")
	fs.IntVarP(&cfg.Core.Workers, "workers", "w", cfg.Core.Workers, "Probes concurrentes máximos")
	fs.IntVarP(&cfg.Core.TimeoutS, "timeout", "T", cfg.Core.TimeoutS, "Timeout global en segundos (0 = sin timeout)")
	fs.BoolVar(&cfg.Core.IncludeCN, "include-cn", cfg.Core.IncludeCN, "Incluir cn en el orden de prioridad")

	fs.StringVarP(&cfg.Output.Dir, "out", "o", cfg.Output.Dir, "Directorio de salida")
	fs.StringVar(&cfg.Output.File, "out-file", cfg.Output.File, "Nombre del archivo plano de salida")
	fs.BoolVar(&cfg.Output.TagLines, "tag-lines", cfg.Output.TagLines, "Agregar sufijo #CC a cada línea")
	fs.BoolVarP(&cfg.Output.Quiet, "quiet", "q", cfg.Output.Quiet, "Sin resumen en terminal")
	fs.BoolVar(&cfg.Output.JSONReport, "json-report", cfg.Output.JSONReport, "Escribir reporte JSON de la corrida")

	fs.StringVar(&cfg.Quotas.File, "quotas", cfg.Quotas.File, "Archivo YAML con la tabla de cupos")
	fs.BoolVar(&cfg.PrintVersion, "version", false, "Imprimir versión y salir")

	fs.Usage = PrintHelp
	pflag.Parse()

	return nil
}

// quotaFile es el formato del archivo YAML de cupos.
type quotaFile struct {
	Countries map[string]int `yaml:"countries"`
	IncludeCN *bool          `yaml:"include_cn"`
}

// loadQuotaFile sobreescribe la tabla de cupos desde YAML.
func loadQuotaFile(cfg *Config) error {
	data, err := os.ReadFile(cfg.Quotas.File)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	var qf quotaFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	if len(qf.Countries) > 0 {
		cfg.Quotas.PerCountry = qf.Countries
	}
	if qf.IncludeCN != nil {
		cfg.Core.IncludeCN = *qf.IncludeCN
	}
	return nil
}

// normalize valida y ajusta valores fuera de rango.
func normalize(cfg *Config) error {
	if cfg.Core.Workers <= 0 {
		cfg.Core.Workers = 8
	}
	if cfg.Core.TimeoutS < 0 {
		cfg.Core.TimeoutS = 0
	}
	if cfg.Output.File == "" {
		cfg.Output.File = "ip.txt"
	}

	for country, quota := range cfg.Quotas.PerCountry {
		if quota < 0 {
			return fmt.Errorf("%w: %s=%d", domain.ErrInvalidQuota, country, quota)
		}
		if !domain.Country(country).IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrInvalidCountry, country)
		}
	}

	if _, ok := cfg.Resolvers[cfg.Core.Resolver]; !ok {
		return fmt.Errorf("%w: unknown resolver %q", domain.ErrInvalidConfig, cfg.Core.Resolver)
	}

	return nil
}

// PriorityOrder retorna el orden de prioridad efectivo según IncludeCN.
func (c Config) PriorityOrder() []domain.Country {
	if c.Core.IncludeCN {
		return domain.PriorityWithCN
	}
	return domain.DefaultPriority
}

// QuotaTable convierte la tabla configurada al tipo de dominio.
// Países del orden de prioridad sin entrada explícita quedan con cupo 0.
func (c Config) QuotaTable() domain.QuotaTable {
	table := make(domain.QuotaTable, len(c.Quotas.PerCountry))
	for country, quota := range c.Quotas.PerCountry {
		table[domain.Country(country)] = quota
	}
	if c.Core.IncludeCN {
		if _, ok := table[domain.CountryCN]; !ok {
			// cupo por defecto de la variante cn
			table[domain.CountryCN] = 10
		}
	}
	return table
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return b
}
