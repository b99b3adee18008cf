// Package form holds the AccessONIX submission form: field table, mode
// controller, input formatters, the validation pipeline and output file
// naming. Nothing here touches the terminal, the network or the disk, so
// every rule can be tested in isolation.
package form
