// Package backend is a small query client for a hosted Postgres backend.
//
// Queries are built fluently and executed through a Driver:
//
//	res := client.From("profiles").Select("*").Limit(1).Execute(ctx)
//	if res.Error != nil {
//		return nil, res.Error
//	}
//
// PostgresDriver talks to the database over a pgx pool. RESTDriver talks to
// a PostgREST compatible endpoint such as Supabase. A client built without a
// driver fails every query with ErrNotConfigured.
//
// FriendlyMessage maps the package errors to short user facing text and
// plugs into errreport.WithMessageMapper.
package backend
