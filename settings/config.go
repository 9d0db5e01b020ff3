package settings

import (
	"log"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caffeinepress/ipn-processing/money"
)

func (s *settings) initConfig(cli *cobra.Command) {
	// let CLI args override config params
	s.viper.BindPFlag("order.callback.url", cli.Flags().Lookup("order-callback-url"))
	s.viper.BindPFlag("api.http.address", cli.Flags().Lookup("http-address"))
	s.viper.BindPFlag("storage.type", cli.Flags().Lookup("storage-type"))

	// defaults
	s.viper.SetDefault("api.http.address", "127.0.0.1:8000")
	s.viper.SetDefault("jvzoo.amount_unit", "cents")
	s.viper.SetDefault("jvzoo.create_user_on_purchase", false)
	s.viper.SetDefault("commerce.currency", "USD")
	s.viper.SetDefault("order.callback.backoff", 100)
	s.viper.SetDefault("mail.new_account.subject", "Your new account")
	s.viper.SetDefault(
		"mail.new_account.body",
		"Hi {name},\n\nan account was created for your purchase.\n"+
			"Username: {username}\nPassword: {password}\n",
	)
}

func (s *settings) GetString(key string) string {
	return s.viper.GetString(key)
}

func (s *settings) GetInt(key string) int {
	return s.viper.GetInt(key)
}

func (s *settings) GetBool(key string) bool {
	return s.viper.GetBool(key)
}

func (s *settings) GetURL(key string) string {
	urlValue := s.viper.GetString(key)
	if _, err := url.ParseRequestURI(urlValue); err != nil {
		log.Fatalf(
			"%s should be set to a valid URL. URL %s",
			key,
			err,
		)
	}
	return urlValue
}

func (s *settings) GetStringMandatory(key string) string {
	value := s.viper.GetString(key)

	if value == "" {
		log.Fatalf("Error: setting %s is required", key)
	}
	return value
}

func (s *settings) GetAmountUnit(key string) money.AmountUnit {
	unit, err := money.AmountUnitFromString(s.viper.GetString(key))
	if err != nil {
		log.Fatalf("Error: setting %s: %s", key, err)
	}
	return unit
}

func (s *settings) ConfigFileUsed() string {
	return s.viper.ConfigFileUsed()
}

func (s *settings) GetViper() *viper.Viper {
	return s.viper
}
