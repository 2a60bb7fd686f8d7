package main

import "gtd/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustOpenSQLite()
	defer app.CloseSQLite()

	app.MustListenAndServeHTTP()
}
