package params

import "os"

// InfluxConfig is read from the environment (or a .env file).
type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

func DefaultInfluxConfig() *InfluxConfig {
	return &InfluxConfig{
		URL:    os.Getenv("INFLUXDB_URL"),
		Token:  os.Getenv("INFLUXDB_TOKEN"),
		Org:    os.Getenv("INFLUXDB_ORG"),
		Bucket: os.Getenv("INFLUXDB_BUCKET"),
	}
}

func (c *InfluxConfig) Valid() bool {
	return c != nil && c.URL != "" && c.Bucket != ""
}
