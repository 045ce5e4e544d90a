package main

import "geofacts/controller"

func notifierFunc(msgs *[]string) controller.Notifier {
	return controller.NotifierFunc(func(m string) { *msgs = append(*msgs, m) })
}
