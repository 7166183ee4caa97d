package config

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

func (mc *MongoConfig) GetConnectionString() string {
	return mc.URI
}

func defaultMongoConfig() MongoConfig {
	return MongoConfig{
		URI:      "mongodb://localhost:27017",
		Database: "storefront",
	}
}

func (mc *MongoConfig) applyEnv() {
	overrideString(&mc.URI, "MONGO_URI")
	overrideString(&mc.Database, "MONGO_DATABASE")
}
