// Package branding holds product naming shared by every surface.
package branding

// AppName is the product name shown in page titles and the app shell.
const AppName = "retina.care"
