// Package matches fetches live football fixtures and keeps them fresh for
// display.
//
// Client reads the api-sports fixtures endpoint under an outbound rate
// limit. Poller reloads on an interval and keeps the last good result when
// a load fails. Carousel pages through the fixtures a few at a time and
// rotates on its own unless paused.
package matches
