// internal/platform/iputil/iputil.go
package iputil

import (
	"regexp"
	"strconv"
	"strings"
)

// ipv4Pattern matchea el primer dotted-quad de una línea, con sufijo CIDR opcional.
// La validación de rango de octetos se hace aparte (el regex acepta 0-999).
var ipv4Pattern = regexp.MustCompile(`(\d{1,3}(?:\.\d{1,3}){3})(?:/\d{1,2})?`)

// ExtractIPv4 busca la primera subcadena dotted-quad de la línea cuyos cuatro
// octetos estén en [0,255]. El sufijo CIDR, si existe, se ignora.
// Retorna ("", false) si la línea no contiene una IPv4 válida.
func ExtractIPv4(line string) (string, bool) {
	rest := line
	for {
		m := ipv4Pattern.FindStringSubmatchIndex(rest)
		if m == nil {
			return "", false
		}
		ip := rest[m[2]:m[3]]
		if IsIPv4(ip) {
			return ip, true
		}
		// octetos fuera de rango: seguir buscando más adelante en la línea
		rest = rest[m[3]:]
	}
}

// IsIPv4 verifica que s sea exactamente un dotted-quad con octetos en [0,255].
func IsIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if len(p) == 0 || len(p) > 3 {
			return false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// ToUint32 convierte una IPv4 validada a su representación entera big-endian.
// La tabla de rangos la usa como clave de búsqueda binaria.
// Retorna (0, false) si s no es una IPv4 válida.
func ToUint32(s string) (uint32, bool) {
	if !IsIPv4(s) {
		return 0, false
	}
	var n uint32
	for _, p := range strings.Split(s, ".") {
		octet, _ := strconv.Atoi(p)
		n = n<<8 | uint32(octet)
	}
	return n, true
}
