package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Jukeman9/Gokart-racing/common/utils"
	"github.com/Jukeman9/Gokart-racing/relay"
)

func main() {
	rand.Seed(time.Now().UnixNano())

	host := flag.String("host", "", "IP serving the relay")
	port := flag.Int("port", 8090, "Port serving the relay")

	flag.Parse()

	addr := *host + ":" + strconv.Itoa(*port)

	service := relay.NewRelayService(addr)

	hassigtermed := make(chan os.Signal, 2)
	signal.Notify(hassigtermed, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-hassigtermed
		log.Println("Relay shutting down")
		os.Exit(0)
	}()

	err := service.ListenAndServe()
	utils.Check(err, "Could not serve relay on "+addr)
}
