// Package provconf is the entry point of the provider configuration engine.
//
// It ties the structural schema validator, the value validators and the
// document checker together behind one Engine, and records every call in
// the optional metrics collector and logger:
//
//	engine := provconf.New(provconf.Options{})
//
//	provider, result := engine.ValidateProvider(raw)
//	if !result.Valid {
//		fmt.Println(format.CreateUserMessage(result.Errors))
//	}
//
//	result = engine.ValidateConfigurationValues(values, provider.Fields())
//
// The package-level functions use a default Engine without metrics. Results
// are returned unformatted; Engine.Format and Engine.CheckFile apply the
// configured format.Formatter.
//
// MustProvider is the assertion entry point for declarations compiled into
// a program: it panics with the *errors.ErrorList when a declaration is
// invalid, so a broken built-in provider fails at startup.
package provconf
