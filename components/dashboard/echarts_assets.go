package dashboard

import (
	"os"
	"strings"
)

const (
	// DefaultEChartsAssetsHostURL is the public go-echarts assets bucket.
	DefaultEChartsAssetsHostURL = "https://go-echarts.github.io/go-echarts-assets/assets/"
	// EnvEChartsCDN overrides the assets host.
	EnvEChartsCDN = "ORDERBOARD_ECHARTS_CDN"
)

// DefaultEChartsAssetsHost returns the assets host, honouring ORDERBOARD_ECHARTS_CDN.
func DefaultEChartsAssetsHost() string {
	if host := strings.TrimSpace(os.Getenv(EnvEChartsCDN)); host != "" {
		return ensureTrailingSlash(host)
	}
	return DefaultEChartsAssetsHostURL
}

func ensureTrailingSlash(value string) string {
	if value == "" || strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
