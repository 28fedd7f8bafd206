package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	JWTSecret              string
	MatchRadiusMeters      string
	KafkaHost              string
	KafkaOrderChangedTopic string
	PartnerRetrySchedule   string
	OtelExporterURL        string
	OtelServiceName        string
}

// Validate checks the settings the service cannot start without.
func (c Config) Validate() error {
	var errList []error
	if c.HTTPPort == "" {
		errList = append(errList, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	if c.DBHost == "" {
		errList = append(errList, errs.NewValueIsRequiredError("DB_HOST"))
	}
	if c.JWTSecret == "" {
		errList = append(errList, errs.NewValueIsRequiredError("JWT_SECRET"))
	}
	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		errList = append(errList, errs.NewValueIsRequiredError("KAFKA_ORDER_CHANGED_TOPIC"))
	}
	if _, err := c.MatchRadius(); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

// MatchRadius returns MATCH_RADIUS_METERS, or the default radius when unset.
func (c Config) MatchRadius() (float64, error) {
	if c.MatchRadiusMeters == "" {
		return services.DefaultMatchRadiusMeters, nil
	}
	radius, err := strconv.ParseFloat(c.MatchRadiusMeters, 64)
	if err != nil || radius <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("MATCH_RADIUS_METERS",
			fmt.Errorf("%q is not a positive number", c.MatchRadiusMeters))
	}
	return radius, nil
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
