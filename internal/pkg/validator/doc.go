// Package validator validates inbound request models before the use-case
// layer runs, translating failures into field-to-message maps.
package validator
