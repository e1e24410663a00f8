// Package template is the analysis and expansion core. It treats a raw text
// file as the body of an HCL template expression, which lets the same text be
// parsed for variable discovery and later evaluated for expansion with one
// consistent escaping scheme. Everything in this package is pure and
// in-memory; file I/O lives in the source package.
package template
