// Package gen holds code generated from the API description in api/.
package gen

//go:generate go run github.com/ogen-go/ogen/cmd/ogen --target oas --package oas --clean ../api/openapi.yaml
