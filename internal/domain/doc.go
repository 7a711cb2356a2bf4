// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, card sets, study modes, and the
// records a finished study session leaves behind. It is independent of any
// specific infrastructure or delivery mechanism.
package domain
