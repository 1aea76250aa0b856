package validators

import (
	"net"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)*\.[A-Za-z]{2,}$`)

func IsEmailFormatValid(email string) bool {
	return emailPattern.MatchString(email)
}

func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
