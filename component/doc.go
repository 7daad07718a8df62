// Package component defines lifecycle-managed parts of an application
// (servers, clients) and a Registry that starts them in order and stops
// them in reverse.
//
// Components may also implement Describable and RouteProvider to report
// themselves in the startup summary.
package component
