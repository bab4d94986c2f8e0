// Package analysis holds the pure pieces of the live-editing pipeline: word
// counting, error highlighting, suggestion application and the debounce
// scheduler. Nothing here performs I/O or touches the terminal; the
// coordinator wires these together and the ui package renders them.
package analysis
