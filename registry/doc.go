/*
Package registry provides the thread-safe name -> factory map entitydb uses
to resolve custom entity and repository types.

Names are fully qualified the way the entity manager builds them, i.e. a
namespace prefix followed by the type name:

	entities := registry.New[func() string]()
	entities.MustRegister("app.UserProfileEntity", newUserProfile)

	f, ok := entities.Lookup("app.UserProfileEntity")

Registering the same name twice fails (Register) or panics (MustRegister).
The registry should be populated during initialization, typically in init()
functions.
*/
package registry
