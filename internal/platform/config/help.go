// internal/platform/config/help.go
package config

import (
	"fmt"
	"os"
)

const helpText = `
ipsift - Endpoint Sifting & Reachability Engine

USAGE:
  ipsift -u <feed-url> [options]
  ipsift -f <feed-file> [options]

IMPORTANT:
  Use double dash (--) for long flag names: --resolver, --workers, --quotas
  Use single dash (-) for short flags: -u, -w, -q

CORE OPTIONS:
  -u, --url string         Candidate feed URL (newline-delimited text)
  -f, --file string        Local candidate feed file (takes priority over --url)
  -r, --resolver string    Country resolution strategy: tag|rangedb|geodb|remote (default: "tag")
  -w, --workers int        Maximum concurrent reachability probes (default: 8)
  -T, --timeout int        Global timeout in seconds, 0=no timeout (default: 0)
      --include-cn         Append cn to the country priority order (default: false)

RESOLVER OPTIONS (via ENV):
  IPSIFT_RESOLVER_RANGEDB_CSV_PATH    Path to the DB-IP country-lite CSV
  IPSIFT_RESOLVER_GEODB_DB_PATH       Path to the MaxMind-format country database
  IPSIFT_RESOLVER_REMOTE_BATCH_URL    Batch lookup endpoint
  IPSIFT_RESOLVER_REMOTE_RATELIMIT    Requests per second for the remote lookup

QUOTA OPTIONS:
      --quotas string      YAML file overriding per-country quotas
                           (defaults: sg=50 hk=30 jp=20 tw=10 kr=10 us=30)

OUTPUT OPTIONS:
  -o, --out string         Output directory (default: "ipsift_out")
      --out-file string    Flat output filename (default: "ip.txt")
      --tag-lines          Append " #CC" country suffix to each output line
      --json-report        Also write a JSON run report (default: true)
  -q, --quiet              Disable terminal summary

OTHER:
      --version            Print version and exit
  -h, --help               Show this help

EXAMPLES:
  ipsift -u https://example.org/all.txt
  ipsift -u https://example.org/ip.txt -r rangedb -w 16 --include-cn
  ipsift -f ./all.txt --quotas quotas.yml -o ./out
`

// PrintHelp imprime el texto de ayuda en stdout.
func PrintHelp() {
	fmt.Fprint(os.Stdout, helpText)
}
