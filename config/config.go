package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	SMTP     SMTP
	Exam     Exam
}

type Server struct {
	Port    string
	BaseURL string // public URL used in certificate review links
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type Exam struct {
	QuestionBankPath string
	QuestionCount    int
	DurationMinutes  int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("EMAIL_FROM", "no-reply@examportal.local")
	viper.SetDefault("QUESTION_BANK_PATH", "data/questions.json")
	viper.SetDefault("EXAM_QUESTION_COUNT", 20)
	viper.SetDefault("EXAM_DURATION_MINUTES", 15)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.BaseURL = viper.GetString("SERVER_BASE_URL")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.SMTP.Host = viper.GetString("SMTP_HOST")
	config.SMTP.Port = viper.GetInt("SMTP_PORT")
	config.SMTP.User = viper.GetString("SMTP_USER")
	config.SMTP.Password = viper.GetString("SMTP_PASSWORD")
	config.SMTP.From = viper.GetString("EMAIL_FROM")

	config.Exam.QuestionBankPath = viper.GetString("QUESTION_BANK_PATH")
	config.Exam.QuestionCount = viper.GetInt("EXAM_QUESTION_COUNT")
	config.Exam.DurationMinutes = viper.GetInt("EXAM_DURATION_MINUTES")

	log.Info().Str("port", config.Server.Port).Str("database", config.Database.Name).Msg("Config loaded")
	return &config, nil
}
