package auth_handlers

import "strings"

// detectDeviceType leitet aus dem User-Agent einen lesbaren Gerätenamen für den Session-Ursprung ab.
func detectDeviceType(ua string) string {
	ua = strings.ToLower(ua)

	switch {
	case ua == "":
		return "Unknown Device"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "iphone"):
		return "iPhone"
	case strings.Contains(ua, "ipad"):
		return "iPad"
	case strings.Contains(ua, "windows"):
		return "Windows PC"
	case strings.Contains(ua, "macintosh"):
		return "MacOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	case strings.Contains(ua, "curl"), strings.Contains(ua, "postman"):
		return "API Client"
	default:
		return "Unknown Device"
	}
}
