// Package email provides transactional email delivery behind a small
// Sender interface, with a Postmark implementation for production and a
// filesystem implementation for local development.
package email
