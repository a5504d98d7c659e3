package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/joshp123/gohome-hddtemp/plugins/hddtemp"
)

type directFlags struct {
	addr    string
	timeout time.Duration
	sep     string
	device  string
	json    bool
}

func parseDirectFlags(name string, args []string) directFlags {
	var f directFlags
	flags := flag.NewFlagSet(name, flag.ExitOnError)
	flags.StringVar(&f.addr, "addr", envOrDefault("HDDTEMP_ADDR", "127.0.0.1:7634"), "hddtemp address")
	flags.DurationVar(&f.timeout, "timeout", 5*time.Second, "read timeout (0 waits for the daemon to close)")
	flags.StringVar(&f.sep, "sep", string(hddtemp.DefaultSeparator), "field separator")
	flags.StringVar(&f.device, "device", "", "only show this device (e.g. sda or /dev/sda)")
	flags.BoolVar(&f.json, "json", false, "print JSON")
	_ = flags.Parse(args)
	if len(f.sep) != 1 {
		fatal(name, fmt.Errorf("--sep must be a single character"))
	}
	return f
}

func fetchCmd(args []string) {
	f := parseDirectFlags("fetch", args)
	out := outputMode{json: f.json}

	ctx := context.Background()
	devices, err := hddtemp.Fetch(ctx, f.addr, f.timeout, f.sep[0])
	if err != nil {
		fatal("fetch", err)
	}

	ids := devices.IDs()
	if f.device != "" {
		id, err := resolveDevice(f.device, ids)
		if err != nil {
			fatal("fetch", err)
		}
		ids = []string{id}
	}

	now := time.Now()
	if out.json {
		payloads := make([]hddtemp.DevicePayload, 0, len(ids))
		for _, id := range ids {
			payloads = append(payloads, hddtemp.NewDevicePayload(id, devices[id], now))
		}
		out.printJSON(payloads)
		return
	}

	rows := [][]string{{"DEVICE", "MODEL", "STATUS", "TEMPERATURE"}}
	for _, id := range ids {
		device := devices[id]
		rows = append(rows, []string{id, device.Model, device.Result.Label(), formatTemperature(device)})
	}
	out.table(rows)
}

func rawCmd(args []string) {
	f := parseDirectFlags("raw", args)
	raw, err := hddtemp.FetchRaw(context.Background(), f.addr, f.timeout)
	if err != nil {
		fatal("raw", err)
	}
	fmt.Println(raw)
}

func devicesCmd(ctx context.Context, conn *grpc.ClientConn, args []string) {
	flags := flag.NewFlagSet("devices", flag.ExitOnError)
	jsonOutput := flags.Bool("json", false, "print JSON")
	_ = flags.Parse(args)
	out := outputMode{json: *jsonOutput}

	client := hddtemp.NewHddtempServiceClient(conn)
	resp, err := client.GetDevices(ctx, &emptypb.Empty{})
	if err != nil {
		fatal("devices", err)
	}
	if out.json {
		data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
		if err != nil {
			fatal("format json", err)
		}
		fmt.Println(string(data))
		return
	}

	rows := [][]string{{"DEVICE", "MODEL", "STATUS", "TEMPERATURE"}}
	for _, value := range resp.GetFields()["devices"].GetListValue().GetValues() {
		fields := value.GetStructValue().GetFields()
		temp := "-"
		if t, ok := fields["temperature"]; ok {
			temp = fmt.Sprintf("%.0f %s", t.GetNumberValue(), fields["unit"].GetStringValue())
		}
		rows = append(rows, []string{
			fields["id"].GetStringValue(),
			fields["model"].GetStringValue(),
			fields["status"].GetStringValue(),
			temp,
		})
	}
	if len(rows) == 1 {
		fmt.Fprintln(os.Stderr, "no devices")
		return
	}
	out.table(rows)
}

func formatTemperature(device hddtemp.Device) string {
	if !device.HasReading() {
		return "-"
	}
	return fmt.Sprintf("%d %s", *device.Temperature, device.Unit.String())
}
