package logging

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// InitLogger initializes the structured logger with JSON format
func InitLogger() *logrus.Logger {
	log = logrus.New()

	// Set JSON formatter for structured logging
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	log.SetOutput(os.Stdout)

	// Set log level from environment or default to Info
	logLevel := os.Getenv("LOG_LEVEL")
	switch logLevel {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// NewCorrelationID generates a new correlation ID for request tracing
func NewCorrelationID() string {
	return uuid.New().String()
}

// WithCorrelationID returns logger fields with correlation ID
func WithCorrelationID(correlationID string) logrus.Fields {
	return logrus.Fields{
		"correlation_id": correlationID,
	}
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	if log == nil {
		return InitLogger()
	}
	return log
}

// Event types as constants
const (
	EventOrderPlaced        = "order_placed"
	EventOrderUpdated       = "order_updated"
	EventOrderCancelled     = "order_cancelled"
	EventOrderRejected      = "order_rejected"
	EventTradeClosed        = "trade_closed"
	EventInvariantViolation = "invariant_violation"
	EventBookStarted        = "book_started"
	EventBookStopped        = "book_stopped"
)

// LogOrderPlaced logs when an order is placed into the book
func LogOrderPlaced(instrument string, orderID, clientID int64, side, tag string, price, size string) {
	GetLogger().WithFields(logrus.Fields{
		"event":      EventOrderPlaced,
		"instrument": instrument,
		"order_id":   orderID,
		"client_id":  clientID,
		"side":       side,
		"tag":        tag,
		"price":      price,
		"size":       size,
	}).Info("Order placed")
}

// LogOrderUpdated logs when an order's price, size or fill changes
func LogOrderUpdated(instrument string, orderID, clientID int64, side string, price, filled, remaining string) {
	GetLogger().WithFields(logrus.Fields{
		"event":      EventOrderUpdated,
		"instrument": instrument,
		"order_id":   orderID,
		"client_id":  clientID,
		"side":       side,
		"price":      price,
		"filled":     filled,
		"remaining":  remaining,
	}).Info("Order updated")
}

// LogOrderCancelled logs when an order is cancelled
func LogOrderCancelled(instrument string, orderID, clientID int64, side string) {
	GetLogger().WithFields(logrus.Fields{
		"event":      EventOrderCancelled,
		"instrument": instrument,
		"order_id":   orderID,
		"client_id":  clientID,
		"side":       side,
	}).Info("Order cancelled")
}

// LogOrderRejected logs when an order is rejected by input validation
func LogOrderRejected(instrument string, clientID int64, reason string) {
	GetLogger().WithFields(logrus.Fields{
		"event":      EventOrderRejected,
		"instrument": instrument,
		"client_id":  clientID,
		"reason":     reason,
	}).Warn("Order rejected")
}

// LogTradeClosed logs when a trade is executed
func LogTradeClosed(instrument, tradeID string, bidOrderID, askOrderID, bidClient, askClient int64, price, size string) {
	GetLogger().WithFields(logrus.Fields{
		"event":        EventTradeClosed,
		"instrument":   instrument,
		"trade_id":     tradeID,
		"bid_order_id": bidOrderID,
		"ask_order_id": askOrderID,
		"bid_client":   bidClient,
		"ask_client":   askClient,
		"price":        price,
		"size":         size,
	}).Info("Trade closed")
}

// LogInvariantViolation logs an internal matching defect; these indicate a bug
// in the engine, never bad input
func LogInvariantViolation(instrument, reason string, bidOrderID, askOrderID int64) {
	GetLogger().WithFields(logrus.Fields{
		"event":        EventInvariantViolation,
		"instrument":   instrument,
		"reason":       reason,
		"bid_order_id": bidOrderID,
		"ask_order_id": askOrderID,
	}).Error("Matching invariant violated")
}

// LogWithFields provides a flexible logging method
func LogWithFields(level logrus.Level, message string, fields logrus.Fields) {
	GetLogger().WithFields(fields).Log(level, message)
}
