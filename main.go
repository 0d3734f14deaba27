package main

import "collabviz/genrenet/cmd"

func main() {
	cmd.Execute()
}
