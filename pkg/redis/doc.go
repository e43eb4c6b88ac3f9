// Package redis provides Redis connectivity for the distributed flavor
// of the plan resolver cache: a retrying Connect and a healthcheck
// probe around the go-redis client.
package redis
