package utils

import "encoding/base64"

// TryDecodeBase64 returns the decoded form of s when it is valid base64,
// otherwise s unchanged. Deployment secrets arrive base64-wrapped from some
// environments and plain from others.
func TryDecodeBase64(s string) string {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return string(decoded)
}
