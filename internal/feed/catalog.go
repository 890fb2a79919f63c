package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultCatalog is the built-in feed list, taken from the Hacker News
// Popularity Contest 2025 blog roll.
var defaultCatalog = []Source{
	{Name: "simonwillison.net", FeedURL: "https://simonwillison.net/atom/everything/", SiteURL: "https://simonwillison.net"},
	{Name: "jeffgeerling.com", FeedURL: "https://www.jeffgeerling.com/blog.xml", SiteURL: "https://jeffgeerling.com"},
	{Name: "seangoedecke.com", FeedURL: "https://www.seangoedecke.com/rss.xml", SiteURL: "https://seangoedecke.com"},
	{Name: "krebsonsecurity.com", FeedURL: "https://krebsonsecurity.com/feed/", SiteURL: "https://krebsonsecurity.com"},
	{Name: "daringfireball.net", FeedURL: "https://daringfireball.net/feeds/main", SiteURL: "https://daringfireball.net"},
	{Name: "ericmigi.com", FeedURL: "https://ericmigi.com/rss.xml", SiteURL: "https://ericmigi.com"},
	{Name: "antirez.com", FeedURL: "http://antirez.com/rss", SiteURL: "http://antirez.com"},
	{Name: "idiallo.com", FeedURL: "https://idiallo.com/feed.rss", SiteURL: "https://idiallo.com"},
	{Name: "maurycyz.com", FeedURL: "https://maurycyz.com/index.xml", SiteURL: "https://maurycyz.com"},
	{Name: "pluralistic.net", FeedURL: "https://pluralistic.net/feed/", SiteURL: "https://pluralistic.net"},
	{Name: "shkspr.mobi", FeedURL: "https://shkspr.mobi/blog/feed/", SiteURL: "https://shkspr.mobi"},
	{Name: "lcamtuf.substack.com", FeedURL: "https://lcamtuf.substack.com/feed", SiteURL: "https://lcamtuf.substack.com"},
	{Name: "mitchellh.com", FeedURL: "https://mitchellh.com/feed.xml", SiteURL: "https://mitchellh.com"},
	{Name: "dynomight.net", FeedURL: "https://dynomight.net/feed.xml", SiteURL: "https://dynomight.net"},
	{Name: "xeiaso.net", FeedURL: "https://xeiaso.net/blog.rss", SiteURL: "https://xeiaso.net"},
	{Name: "devblogs.microsoft.com/oldnewthing", FeedURL: "https://devblogs.microsoft.com/oldnewthing/feed", SiteURL: "https://devblogs.microsoft.com/oldnewthing"},
	{Name: "righto.com", FeedURL: "https://www.righto.com/feeds/posts/default", SiteURL: "https://righto.com"},
	{Name: "lucumr.pocoo.org", FeedURL: "https://lucumr.pocoo.org/feed.atom", SiteURL: "https://lucumr.pocoo.org"},
	{Name: "skyfall.dev", FeedURL: "https://skyfall.dev/rss.xml", SiteURL: "https://skyfall.dev"},
	{Name: "garymarcus.substack.com", FeedURL: "https://garymarcus.substack.com/feed", SiteURL: "https://garymarcus.substack.com"},
	{Name: "overreacted.io", FeedURL: "https://overreacted.io/rss.xml", SiteURL: "https://overreacted.io"},
	{Name: "timsh.org", FeedURL: "https://timsh.org/rss/", SiteURL: "https://timsh.org"},
	{Name: "johndcook.com", FeedURL: "https://www.johndcook.com/blog/feed/", SiteURL: "https://johndcook.com"},
	{Name: "gilesthomas.com", FeedURL: "https://gilesthomas.com/feed/rss.xml", SiteURL: "https://gilesthomas.com"},
	{Name: "matklad.github.io", FeedURL: "https://matklad.github.io/feed.xml", SiteURL: "https://matklad.github.io"},
	{Name: "derekthompson.org", FeedURL: "https://www.theatlantic.com/feed/author/derek-thompson/", SiteURL: "https://derekthompson.org"},
	{Name: "evanhahn.com", FeedURL: "https://evanhahn.com/feed.xml", SiteURL: "https://evanhahn.com"},
	{Name: "terriblesoftware.org", FeedURL: "https://terriblesoftware.org/feed/", SiteURL: "https://terriblesoftware.org"},
	{Name: "rakhim.exotext.com", FeedURL: "https://rakhim.exotext.com/rss.xml", SiteURL: "https://rakhim.exotext.com"},
	{Name: "joanwestenberg.com", FeedURL: "https://joanwestenberg.com/rss", SiteURL: "https://joanwestenberg.com"},
	{Name: "xania.org", FeedURL: "https://xania.org/feed", SiteURL: "https://xania.org"},
	{Name: "micahflee.com", FeedURL: "https://micahflee.com/feed/", SiteURL: "https://micahflee.com"},
	{Name: "nesbitt.io", FeedURL: "https://nesbitt.io/feed.xml", SiteURL: "https://nesbitt.io"},
	{Name: "construction-physics.com", FeedURL: "https://www.construction-physics.com/feed", SiteURL: "https://construction-physics.com"},
	{Name: "tedium.co", FeedURL: "https://feed.tedium.co/", SiteURL: "https://tedium.co"},
	{Name: "susam.net", FeedURL: "https://susam.net/feed.xml", SiteURL: "https://susam.net"},
	{Name: "entropicthoughts.com", FeedURL: "https://entropicthoughts.com/feed.xml", SiteURL: "https://entropicthoughts.com"},
	{Name: "buttondown.com/hillelwayne", FeedURL: "https://buttondown.com/hillelwayne/rss", SiteURL: "https://buttondown.com/hillelwayne"},
	{Name: "dwarkesh.com", FeedURL: "https://www.dwarkeshpatel.com/feed", SiteURL: "https://dwarkesh.com"},
	{Name: "borretti.me", FeedURL: "https://borretti.me/feed.xml", SiteURL: "https://borretti.me"},
	{Name: "wheresyoured.at", FeedURL: "https://www.wheresyoured.at/rss/", SiteURL: "https://wheresyoured.at"},
	{Name: "jayd.ml", FeedURL: "https://jayd.ml/feed.xml", SiteURL: "https://jayd.ml"},
	{Name: "minimaxir.com", FeedURL: "https://minimaxir.com/index.xml", SiteURL: "https://minimaxir.com"},
	{Name: "geohot.github.io", FeedURL: "https://geohot.github.io/blog/feed.xml", SiteURL: "https://geohot.github.io"},
	{Name: "paulgraham.com", FeedURL: "http://www.aaronsw.com/2002/feeds/pgessays.rss", SiteURL: "https://paulgraham.com"},
	{Name: "filfre.net", FeedURL: "https://www.filfre.net/feed/", SiteURL: "https://filfre.net"},
	{Name: "blog.jim-nielsen.com", FeedURL: "https://blog.jim-nielsen.com/feed.xml", SiteURL: "https://blog.jim-nielsen.com"},
	{Name: "jyn.dev", FeedURL: "https://jyn.dev/atom.xml", SiteURL: "https://jyn.dev"},
	{Name: "geoffreylitt.com", FeedURL: "https://www.geoffreylitt.com/feed.xml", SiteURL: "https://geoffreylitt.com"},
	{Name: "downtowndougbrown.com", FeedURL: "https://www.downtowndougbrown.com/feed/", SiteURL: "https://www.downtowndougbrown.com"},
	{Name: "brutecat.com", FeedURL: "https://brutecat.com/rss.xml", SiteURL: "https://brutecat.com"},
	{Name: "eli.thegreenplace.net", FeedURL: "https://eli.thegreenplace.net/feeds/all.atom.xml", SiteURL: "https://eli.thegreenplace.net"},
	{Name: "abortretry.fail", FeedURL: "https://www.abortretry.fail/feed", SiteURL: "https://abortretry.fail"},
	{Name: "fabiensanglard.net", FeedURL: "https://fabiensanglard.net/rss.xml", SiteURL: "https://fabiensanglard.net"},
	{Name: "oldvcr.blogspot.com", FeedURL: "https://oldvcr.blogspot.com/feeds/posts/default", SiteURL: "https://oldvcr.blogspot.com"},
	{Name: "bogdanthegeek.github.io", FeedURL: "https://bogdanthegeek.github.io/blog/index.xml", SiteURL: "https://bogdanthegeek.github.io"},
	{Name: "hugotunius.se", FeedURL: "https://hugotunius.se/feed.xml", SiteURL: "https://hugotunius.se"},
	{Name: "gwern.net", FeedURL: "https://gwern.substack.com/feed", SiteURL: "https://gwern.net"},
	{Name: "berthub.eu", FeedURL: "https://berthub.eu/articles/index.xml", SiteURL: "https://berthub.eu"},
	{Name: "chadnauseam.com", FeedURL: "https://chadnauseam.com/rss.xml", SiteURL: "https://chadnauseam.com"},
	{Name: "simone.org", FeedURL: "https://simone.org/feed/", SiteURL: "https://simone.org"},
	{Name: "it-notes.dragas.net", FeedURL: "https://it-notes.dragas.net/feed/", SiteURL: "https://it-notes.dragas.net"},
	{Name: "beej.us", FeedURL: "https://beej.us/blog/rss.xml", SiteURL: "https://beej.us"},
	{Name: "hey.paris", FeedURL: "https://hey.paris/index.xml", SiteURL: "https://hey.paris"},
	{Name: "danielwirtz.com", FeedURL: "https://danielwirtz.com/rss.xml", SiteURL: "https://danielwirtz.com"},
	{Name: "matduggan.com", FeedURL: "https://matduggan.com/rss/", SiteURL: "https://matduggan.com"},
	{Name: "refactoringenglish.com", FeedURL: "https://refactoringenglish.com/index.xml", SiteURL: "https://refactoringenglish.com"},
	{Name: "worksonmymachine.substack.com", FeedURL: "https://worksonmymachine.substack.com/feed", SiteURL: "https://worksonmymachine.substack.com"},
	{Name: "philiplaine.com", FeedURL: "https://philiplaine.com/index.xml", SiteURL: "https://philiplaine.com"},
	{Name: "steveblank.com", FeedURL: "https://steveblank.com/feed/", SiteURL: "https://steveblank.com"},
	{Name: "bernsteinbear.com", FeedURL: "https://bernsteinbear.com/feed.xml", SiteURL: "https://bernsteinbear.com"},
	{Name: "danieldelaney.net", FeedURL: "https://danieldelaney.net/feed", SiteURL: "https://danieldelaney.net"},
	{Name: "troyhunt.com", FeedURL: "https://www.troyhunt.com/rss/", SiteURL: "https://troyhunt.com"},
	{Name: "herman.bearblog.dev", FeedURL: "https://herman.bearblog.dev/feed/", SiteURL: "https://herman.bearblog.dev"},
	{Name: "tomrenner.com", FeedURL: "https://tomrenner.com/index.xml", SiteURL: "https://tomrenner.com"},
	{Name: "blog.pixelmelt.dev", FeedURL: "https://blog.pixelmelt.dev/rss/", SiteURL: "https://blog.pixelmelt.dev"},
	{Name: "martinalderson.com", FeedURL: "https://martinalderson.com/feed.xml", SiteURL: "https://martinalderson.com"},
	{Name: "danielchasehooper.com", FeedURL: "https://danielchasehooper.com/feed.xml", SiteURL: "https://danielchasehooper.com"},
	{Name: "chiark.greenend.org.uk/~sgtatham", FeedURL: "https://www.chiark.greenend.org.uk/~sgtatham/quasiblog/feed.xml", SiteURL: "https://chiark.greenend.org.uk/~sgtatham"},
	{Name: "grantslatton.com", FeedURL: "https://grantslatton.com/rss.xml", SiteURL: "https://grantslatton.com"},
	{Name: "experimental-history.com", FeedURL: "https://www.experimental-history.com/feed", SiteURL: "https://experimental-history.com"},
	{Name: "anildash.com", FeedURL: "https://anildash.com/feed.xml", SiteURL: "https://anildash.com"},
	{Name: "aresluna.org", FeedURL: "https://aresluna.org/main.rss", SiteURL: "https://aresluna.org"},
	{Name: "michael.stapelberg.ch", FeedURL: "https://michael.stapelberg.ch/feed.xml", SiteURL: "https://michael.stapelberg.ch"},
	{Name: "miguelgrinberg.com", FeedURL: "https://blog.miguelgrinberg.com/feed", SiteURL: "https://miguelgrinberg.com"},
	{Name: "keygen.sh", FeedURL: "https://keygen.sh/blog/feed.xml", SiteURL: "https://keygen.sh"},
	{Name: "mjg59.dreamwidth.org", FeedURL: "https://mjg59.dreamwidth.org/data/rss", SiteURL: "https://mjg59.dreamwidth.org"},
	{Name: "computer.rip", FeedURL: "https://computer.rip/rss.xml", SiteURL: "https://computer.rip"},
}

// DefaultCatalog returns a copy of the built-in feed list.
func DefaultCatalog() []Source {
	catalog := make([]Source, len(defaultCatalog))
	copy(catalog, defaultCatalog)
	return catalog
}

// LoadCatalog reads a yaml feed list from path. The file replaces the
// built-in catalog entirely.
func LoadCatalog(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("feed: failed to read catalog %s: %w", path, err)
	}

	var sources []Source
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("feed: failed to parse catalog %s: %w", path, err)
	}

	for i, s := range sources {
		if s.Name == "" || s.FeedURL == "" {
			return nil, fmt.Errorf("feed: catalog entry %d is missing name or feed_url", i)
		}
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("feed: catalog %s contains no sources", path)
	}

	return sources, nil
}
