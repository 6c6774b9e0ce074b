// Package ml loads pre-trained prop classifiers and serves cached predictions.
package ml

import "errors"

var (
	// ErrModelUnavailable indicates no model is loaded for the statistic
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrInvalidModel indicates the model artifact is malformed
	ErrInvalidModel = errors.New("invalid model artifact")

	// ErrFeatureMismatch indicates the artifact was trained on a different feature layout
	ErrFeatureMismatch = errors.New("feature layout mismatch")

	// ErrInvalidPrediction indicates the model produced a non-finite probability
	ErrInvalidPrediction = errors.New("invalid prediction")
)
