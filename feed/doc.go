/*
Package feed fetches the YouBike station feed and parses it into canonical
records.

Two feed layouts exist. The legacy endpoint returns one text blob in which
stations are separated by "|" and fields by "_":

	0001_捷運市政府站(3號出口)_180_...|0002_捷運國父紀念館站(2號出口)_48_...

The current endpoint returns JSON whose "result" member holds a list of flat
station objects. Which parser runs is decided by the schema version chosen for
the run, never by looking at the body.

# Usage

	c := feed.NewClient(30 * time.Second)
	body, err := c.Fetch(ctx, url)
	if err != nil {
	    return err
	}
	records, err := feed.Parse(station.Legacy, body)

Fetch also accepts a local file path in place of a URL, which is handy for
replaying a saved snapshot.
*/
package feed
