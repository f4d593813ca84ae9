package main

import (
	_ "git.handmade.network/hmn/marsport/src/admintools"
	"git.handmade.network/hmn/marsport/src/website"
)

func main() {
	website.WebsiteCommand.Execute()
}
