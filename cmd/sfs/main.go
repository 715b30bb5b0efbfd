// Command sfs is a small shell around the core filesystem library: format
// and inspect SFS volumes, and move bytes in and out of individual inodes.
// There are no paths or directories to navigate -- every object is just an
// integer inode number.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/dargueta/sfs"
	"github.com/dargueta/sfs/disk"
	"github.com/dargueta/sfs/disks"
)

var log = logrus.New()

func main() {
	app := &cli.App{
		Name:  "sfs",
		Usage: "Format, inspect, and manipulate Simple File System volumes",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			formatCommand,
			debugCommand,
			createCommand,
			removeCommand,
			statCommand,
			catCommand,
			copyInCommand,
			copyOutCommand,
			checkCommand,
			geometryCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("sfs: %s", err)
	}
}

var formatCommand = &cli.Command{
	Name:      "format",
	Usage:     "Create or wipe an SFS image",
	ArgsUsage: "IMAGE_PATH",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "geometry", Usage: "named size preset, see `sfs geometry`"},
		&cli.UintFlag{Name: "blocks", Usage: "total blocks, overrides --geometry"},
	},
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return cli.Exit("format: missing IMAGE_PATH", 1)
		}

		numBlocks := uint32(c.Uint("blocks"))
		if numBlocks == 0 {
			slug := c.String("geometry")
			if slug == "" {
				return cli.Exit("format: one of --blocks or --geometry is required", 1)
			}
			preset, err := disks.Get(slug)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			numBlocks = preset.TotalBlocks
		}

		d, err := disk.CreateFileDisk(path, numBlocks)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer d.Close()

		if err := sfs.Format(d); err != nil {
			return cli.Exit(err.Error(), 1)
		}

		log.Debugf("formatted %s with %d blocks", path, numBlocks)
		fmt.Printf("formatted %s (%d blocks)\n", path, numBlocks)
		return nil
	},
}

var geometryCommand = &cli.Command{
	Name:  "geometry",
	Usage: "List named disk-size presets",
	Action: func(c *cli.Context) error {
		for _, name := range disks.Names() {
			preset, _ := disks.Get(name)
			fmt.Printf("%-12s %8d blocks  %s\n", preset.Slug, preset.TotalBlocks, preset.Description)
		}
		return nil
	},
}

var debugCommand = &cli.Command{
	Name:      "debug",
	Usage:     "Dump the superblock and every valid inode",
	ArgsUsage: "IMAGE_PATH",
	Action: func(c *cli.Context) error {
		return withDisk(c, func(d disk.Disk) error {
			return sfs.Debug(d, os.Stdout)
		})
	},
}

var checkCommand = &cli.Command{
	Name:      "check",
	Usage:     "Verify volume invariants (bitmap consistency, no aliased blocks)",
	ArgsUsage: "IMAGE_PATH",
	Action: func(c *cli.Context) error {
		return withMountedFS(c, func(fs *sfs.FileSystem) error {
			if err := fs.Check(); err != nil {
				fmt.Println(err)
				return cli.Exit("check: volume is inconsistent", 1)
			}
			fmt.Println("ok")
			return nil
		})
	},
}

var createCommand = &cli.Command{
	Name:      "create",
	Usage:     "Allocate a new, empty inode",
	ArgsUsage: "IMAGE_PATH",
	Action: func(c *cli.Context) error {
		return withMountedFS(c, func(fs *sfs.FileSystem) error {
			n, err := fs.Create()
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Println(n)
			return nil
		})
	},
}

var removeCommand = &cli.Command{
	Name:      "remove",
	Usage:     "Free an inode and every block it owns",
	ArgsUsage: "IMAGE_PATH INODE",
	Action: func(c *cli.Context) error {
		return withMountedFS(c, func(fs *sfs.FileSystem) error {
			n, err := inodeArg(c, 1)
			if err != nil {
				return err
			}
			if err := fs.Remove(n); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		})
	},
}

var statCommand = &cli.Command{
	Name:      "stat",
	Usage:     "Print the size, in bytes, of an inode",
	ArgsUsage: "IMAGE_PATH INODE",
	Action: func(c *cli.Context) error {
		return withMountedFS(c, func(fs *sfs.FileSystem) error {
			n, err := inodeArg(c, 1)
			if err != nil {
				return err
			}
			size, err := fs.Stat(n)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Println(size)
			return nil
		})
	},
}

var catCommand = &cli.Command{
	Name:      "cat",
	Usage:     "Print the full contents of an inode to stdout",
	ArgsUsage: "IMAGE_PATH INODE",
	Action: func(c *cli.Context) error {
		return withMountedFS(c, func(fs *sfs.FileSystem) error {
			n, err := inodeArg(c, 1)
			if err != nil {
				return err
			}
			size, err := fs.Stat(n)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			buf := make([]byte, size)
			if _, err := fs.Read(n, buf, 0); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			_, err = os.Stdout.Write(buf)
			return err
		})
	},
}

var copyInCommand = &cli.Command{
	Name:      "copyin",
	Usage:     "Write a host file's contents into an existing inode",
	ArgsUsage: "IMAGE_PATH INODE HOST_FILE",
	Action: func(c *cli.Context) error {
		return withMountedFS(c, func(fs *sfs.FileSystem) error {
			n, err := inodeArg(c, 1)
			if err != nil {
				return err
			}
			hostPath := c.Args().Get(2)
			data, err := os.ReadFile(hostPath)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			written, err := fs.Write(n, data, 0)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if int(written) != len(data) {
				log.Warnf("copyin: volume ran out of space, wrote %d/%d bytes", written, len(data))
			}
			return nil
		})
	},
}

var copyOutCommand = &cli.Command{
	Name:      "copyout",
	Usage:     "Read an inode's full contents into a host file",
	ArgsUsage: "IMAGE_PATH INODE HOST_FILE",
	Action: func(c *cli.Context) error {
		return withMountedFS(c, func(fs *sfs.FileSystem) error {
			n, err := inodeArg(c, 1)
			if err != nil {
				return err
			}
			size, err := fs.Stat(n)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			buf := make([]byte, size)
			if _, err := fs.Read(n, buf, 0); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return os.WriteFile(c.Args().Get(2), buf, 0o644)
		})
	},
}

////////////////////////////////////////////////////////////////////////////////
// Shared helpers

func withDisk(c *cli.Context, fn func(disk.Disk) error) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("missing IMAGE_PATH", 1)
	}

	d, err := disk.OpenFileDisk(path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer d.Close()

	return fn(d)
}

func withMountedFS(c *cli.Context, fn func(*sfs.FileSystem) error) error {
	return withDisk(c, func(d disk.Disk) error {
		fs, err := sfs.Mount(d)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		return fn(fs)
	})
}

func inodeArg(c *cli.Context, index int) (uint32, error) {
	arg := c.Args().Get(index)
	if arg == "" {
		return 0, cli.Exit("missing INODE argument", 1)
	}

	var n uint32
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil {
		return 0, cli.Exit(fmt.Sprintf("invalid inode number %q", arg), 1)
	}
	return n, nil
}
