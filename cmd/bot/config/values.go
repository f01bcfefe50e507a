package config

const (
	// AppName is the name of the application.
	AppName = "bazaar"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvApplicationId is the environment variable for the application ID.
	EnvApplicationId = `APPLICATION_ID`

	// EnvMongoUri is the environment variable for the MongoDB URI.
	EnvMongoUri = `MONGO_URI`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`

	// EnvDataDir is the environment variable for the directory holding the JSON documents.
	EnvDataDir = `DATA_DIR`
)

// Config is the configuration of the bot.
type Config struct {
	// BotToken is the token for the bot.
	BotToken string `env:"BOT_TOKEN,required,notEmpty"`

	// ApplicationId is the ID of the application.
	ApplicationId string `env:"APPLICATION_ID,required,notEmpty"`

	// MongoUri is the URI for the MongoDB database. When set, documents are stored in Mongo
	// instead of the data directory.
	MongoUri string `env:"MONGO_URI"`

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string `env:"MONITORING_PORT" envDefault:"8080"`

	// DataDir is the directory holding the JSON documents.
	DataDir string `env:"DATA_DIR" envDefault:"."`

	// CurrencyName is the display name of the currency.
	CurrencyName string `env:"CURRENCY_NAME" envDefault:"Credits"`

	// AssetChannel is the name of the channel searched for purchased assets.
	AssetChannel string `env:"ASSET_CHANNEL" envDefault:"private-assets"`

	// Debug enables debug logging.
	Debug bool `env:"DEBUG"`
}

// UseMongo reports whether documents are stored in Mongo.
func (c *Config) UseMongo() bool {
	return c.MongoUri != ""
}
