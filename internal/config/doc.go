// Package config defines the format-agnostic model of tree definitions and
// the Loader interface that fills it from some source format.
//
// The `config.Model` is what the app package builds bipartitions from.
// Concrete loaders, such as the HCL one, live in separate packages.
package config
