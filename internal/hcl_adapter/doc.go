// Package hcl_adapter provides the concrete HCL implementation of the
// config.Loader interface. It is responsible for file discovery, parsing,
// and translating `tree` blocks into the format-agnostic config model.
package hcl_adapter
